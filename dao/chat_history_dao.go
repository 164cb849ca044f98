// api/dao/chat_history_dao.go
package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sagelms/sage/api/model"
)

type ChatHistoryDAO struct {
	db *gorm.DB
}

func NewChatHistoryDAO(db *gorm.DB) *ChatHistoryDAO {
	return &ChatHistoryDAO{db: db}
}

// SaveInteraction appends one chat record. Records are never updated or
// deleted.
func (d *ChatHistoryDAO) SaveInteraction(ctx context.Context, interaction *model.ChatInteraction) error {
	if err := d.db.WithContext(ctx).Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to save chat interaction: %w", err)
	}
	return nil
}

func (d *ChatHistoryDAO) GetHistory(ctx context.Context, userID string, limit, offset int) ([]model.ChatInteraction, error) {
	var history []model.ChatInteraction
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}
	return history, nil
}
