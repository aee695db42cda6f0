package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/db"
	"github.com/linkdeck/linkdeck/internal/apperr"
	"github.com/linkdeck/linkdeck/internal/models"
)

type SiteService struct {
	conn *db.Conn
}

func NewSiteService(conn *db.Conn) *SiteService {
	return &SiteService{conn: conn}
}

type CreateSiteParams struct {
	GroupID     uint
	Name        string
	URL         string
	Icon        string
	Description string
	Notes       string
	OrderNum    int
}

func (s *SiteService) FindAll() ([]models.Site, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var sites []models.Site

	if err := gdb.Order("order_num ASC").Find(&sites).Error; err != nil {
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve sites", err)
	}

	return sites, nil
}

func (s *SiteService) FindByGroup(groupID uint) ([]models.Site, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var sites []models.Site

	if err := gdb.Where("group_id = ?", groupID).Order("order_num ASC").Find(&sites).Error; err != nil {
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve sites", err)
	}

	return sites, nil
}

func (s *SiteService) FindByID(id uint) (*models.Site, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var site models.Site

	if err := gdb.First(&site, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "site not found")
		}
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve site", err)
	}

	return &site, nil
}

// Create inserts a bookmark under an existing group. A group_id that
// references no group violates the foreign key and surfaces as a store
// error, not a validation one.
func (s *SiteService) Create(params CreateSiteParams) (*models.Site, error) {
	if params.GroupID == 0 {
		return nil, apperr.New(apperr.Validation, "group_id is required")
	}

	if params.Name == "" || params.URL == "" {
		return nil, apperr.New(apperr.Validation, "site name and url are required")
	}

	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	site := models.Site{
		GroupID:     params.GroupID,
		Name:        params.Name,
		URL:         params.URL,
		Icon:        params.Icon,
		Description: params.Description,
		Notes:       params.Notes,
		OrderNum:    params.OrderNum,
	}

	if err := gdb.Create(&site).Error; err != nil {
		log.Printf("Failed to create site %q: %v", params.Name, err)
		return nil, apperr.Wrap(apperr.Internal, "failed to create site", err)
	}

	return &site, nil
}

// UpdateByID merges the provided fields; group_id may change, moving the
// site between groups.
func (s *SiteService) UpdateByID(id uint, updates map[string]interface{}) (*models.Site, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	var site models.Site

	if err := gdb.First(&site, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "site not found")
		}
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve site", err)
	}

	if len(updates) > 0 {
		if err := gdb.Model(&site).Updates(updates).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to update site", err)
		}
	}

	return &site, nil
}

func (s *SiteService) DeleteByID(id uint) (bool, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	result := gdb.Delete(&models.Site{}, id)

	if result.Error != nil {
		return false, apperr.Wrap(apperr.Internal, "failed to delete site", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// Reorder has the same contract as GroupService.Reorder: per-row writes,
// no batch atomicity, unknown ids are silent no-ops.
func (s *SiteService) Reorder(items []OrderItem) error {
	gdb, err := s.conn.Get()

	if err != nil {
		return apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	for _, item := range items {
		err := gdb.Model(&models.Site{}).
			Where("id = ?", item.ID).
			Update("order_num", item.OrderNum).Error

		if err != nil {
			return apperr.Wrap(apperr.Internal, "failed to update site order", err)
		}
	}

	return nil
}
