package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/db"
	"github.com/linkdeck/linkdeck/internal/apperr"
	"github.com/linkdeck/linkdeck/internal/models"
)

// OrderItem is one (row, target position) pair of a reorder batch.
type OrderItem struct {
	ID       uint
	OrderNum int
}

type GroupService struct {
	conn *db.Conn
}

func NewGroupService(conn *db.Conn) *GroupService {
	return &GroupService{conn: conn}
}

// GroupFilter narrows and paginates the group list. Type and IsHot are
// accepted for wire compatibility but the groups table carries neither
// column, so only Name ever filters.
type GroupFilter struct {
	Name     string
	Type     string
	IsHot    bool
	PageNum  int
	PageSize int
}

func (s *GroupService) FindAll() ([]models.Group, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var groups []models.Group

	if err := gdb.Order("updated_at DESC").Find(&groups).Error; err != nil {
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve groups", err)
	}

	return groups, nil
}

func (s *GroupService) List(filter GroupFilter) ([]models.Group, int64, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	pageNum := filter.PageNum
	pageSize := filter.PageSize

	if pageNum < 1 {
		pageNum = 1
	}

	if pageSize < 1 {
		pageSize = 10
	}

	query := gdb.Model(&models.Group{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.Query, "failed to count groups", err)
	}

	var groups []models.Group

	if err := query.Offset((pageNum - 1) * pageSize).Limit(pageSize).Find(&groups).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.Query, "failed to retrieve groups", err)
	}

	return groups, total, nil
}

func (s *GroupService) FindByID(id uint) (*models.Group, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var group models.Group

	if err := gdb.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "group not found")
		}
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve group", err)
	}

	return &group, nil
}

func (s *GroupService) Create(name string, orderNum int) (*models.Group, error) {
	if name == "" {
		return nil, apperr.New(apperr.Validation, "group name is required")
	}

	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	group := models.Group{Name: name, OrderNum: orderNum}

	if err := gdb.Create(&group).Error; err != nil {
		log.Printf("Failed to create group %q: %v", name, err)
		return nil, apperr.Wrap(apperr.Internal, "failed to create group", err)
	}

	return &group, nil
}

func (s *GroupService) UpdateByID(id uint, updates map[string]interface{}) (*models.Group, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	var group models.Group

	if err := gdb.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "group not found")
		}
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve group", err)
	}

	if len(updates) > 0 {
		if err := gdb.Model(&group).Updates(updates).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to update group", err)
		}
	}

	return &group, nil
}

// DeleteByID removes the group; its sites go with it via the foreign key
// cascade. Returns false when no such row existed.
func (s *GroupService) DeleteByID(id uint) (bool, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	result := gdb.Delete(&models.Group{}, id)

	if result.Error != nil {
		return false, apperr.Wrap(apperr.Internal, "failed to delete group", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// Reorder overwrites order_num row by row, with no transaction around the
// batch: rows written before a failure keep their new position. An id that
// matches no row affects nothing and does not fail the batch.
func (s *GroupService) Reorder(items []OrderItem) error {
	gdb, err := s.conn.Get()

	if err != nil {
		return apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	for _, item := range items {
		err := gdb.Model(&models.Group{}).
			Where("id = ?", item.ID).
			Update("order_num", item.OrderNum).Error

		if err != nil {
			return apperr.Wrap(apperr.Internal, "failed to update group order", err)
		}
	}

	return nil
}
