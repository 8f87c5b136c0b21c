package repo

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/Skotchmaster/cellar_society/internal/domain"
	"github.com/Skotchmaster/cellar_society/internal/models"
)

// CreateMessage appends to the customer's thread. The row is always stored
// unread.
func (r *GormRepo) CreateMessage(ctx context.Context, m *models.Message) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Customer
		if err := tx.Select("id").First(&c, m.CustomerID).Error; err != nil {
			return notFound(err, "customer", m.CustomerID)
		}
		m.IsRead = false
		return tx.Create(m).Error
	})
}

func (r *GormRepo) Thread(ctx context.Context, customerID uint) ([]models.Message, error) {
	msgs := []models.Message{}
	err := r.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

// MarkRead flags every unread message authored by author in the thread and
// returns how many rows changed.
func (r *GormRepo) MarkRead(ctx context.Context, customerID uint, author domain.SenderRole) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Message{}).
		Where("customer_id = ? AND sender_type = ? AND is_read = ?", customerID, string(author), false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) CountUnread(ctx context.Context, customerID uint, author domain.SenderRole) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Message{}).
		Where("customer_id = ? AND sender_type = ? AND is_read = ?", customerID, string(author), false).
		Count(&n).Error
	return n, err
}

func (r *GormRepo) CountUnreadAll(ctx context.Context, author domain.SenderRole) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Message{}).
		Where("sender_type = ? AND is_read = ?", string(author), false).
		Count(&n).Error
	return n, err
}

// Conversations lists one row per customer with messages, most recently
// active first. Unread counts customer-authored messages the admin has not
// seen.
func (r *GormRepo) Conversations(ctx context.Context) ([]models.Conversation, error) {
	type thread struct {
		CustomerID uint
		LastID     uint
		Unread     int64
	}

	var threads []thread
	err := r.DB.WithContext(ctx).Model(&models.Message{}).
		Select("customer_id, MAX(id) AS last_id, SUM(CASE WHEN sender_type = ? AND is_read = ? THEN 1 ELSE 0 END) AS unread",
			string(domain.SenderCustomer), false).
		Group("customer_id").
		Scan(&threads).Error
	if err != nil {
		return nil, err
	}
	out := []models.Conversation{}
	if len(threads) == 0 {
		return out, nil
	}

	lastIDs := make([]uint, 0, len(threads))
	customerIDs := make([]uint, 0, len(threads))
	for _, t := range threads {
		lastIDs = append(lastIDs, t.LastID)
		customerIDs = append(customerIDs, t.CustomerID)
	}

	var last []models.Message
	if err := r.DB.WithContext(ctx).Select("id", "created_at").Where("id IN ?", lastIDs).Find(&last).Error; err != nil {
		return nil, err
	}
	lastAt := make(map[uint]models.Message, len(last))
	for _, m := range last {
		lastAt[m.ID] = m
	}

	var customers []models.Customer
	if err := r.DB.WithContext(ctx).Select("id", "name", "email").Where("id IN ?", customerIDs).Find(&customers).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	for _, t := range threads {
		c, ok := byID[t.CustomerID]
		if !ok {
			continue
		}
		out = append(out, models.Conversation{
			CustomerID:    t.CustomerID,
			CustomerName:  c.Name,
			CustomerEmail: c.Email,
			LastMessageAt: lastAt[t.LastID].CreatedAt,
			Unread:        t.Unread,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastMessageAt.Equal(out[j].LastMessageAt) {
			return out[i].CustomerID > out[j].CustomerID
		}
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}
