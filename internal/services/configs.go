package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/db"
	"github.com/linkdeck/linkdeck/internal/apperr"
	"github.com/linkdeck/linkdeck/internal/models"
)

type ConfigService struct {
	conn *db.Conn
}

func NewConfigService(conn *db.Conn) *ConfigService {
	return &ConfigService{conn: conn}
}

func (s *ConfigService) FindByKey(key string) (*models.Config, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var config models.Config

	if err := gdb.Where("`key` = ?", key).First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "config not found")
		}
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve config", err)
	}

	return &config, nil
}

// AsMap returns every config row as a flat key -> value map.
func (s *ConfigService) AsMap() (map[string]string, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "database unavailable", err)
	}

	var configs []models.Config

	if err := gdb.Find(&configs).Error; err != nil {
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve configs", err)
	}

	result := make(map[string]string, len(configs))

	for _, config := range configs {
		result[config.Key] = config.Value
	}

	return result, nil
}

// Upsert creates the row when the key is absent, otherwise overwrites value.
func (s *ConfigService) Upsert(key, value string) (*models.Config, error) {
	if key == "" {
		return nil, apperr.New(apperr.Validation, "config key is required")
	}

	gdb, err := s.conn.Get()

	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	var config models.Config

	err = gdb.Where("`key` = ?", key).First(&config).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		config = models.Config{Key: key, Value: value}

		if err := gdb.Create(&config).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to create config", err)
		}

		return &config, nil
	}

	if err != nil {
		return nil, apperr.Wrap(apperr.Query, "failed to retrieve config", err)
	}

	config.Value = value

	if err := gdb.Save(&config).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to update config", err)
	}

	return &config, nil
}

func (s *ConfigService) DeleteByKey(key string) (bool, error) {
	gdb, err := s.conn.Get()

	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "database unavailable", err)
	}

	result := gdb.Where("`key` = ?", key).Delete(&models.Config{})

	if result.Error != nil {
		return false, apperr.Wrap(apperr.Internal, "failed to delete config", result.Error)
	}

	return result.RowsAffected > 0, nil
}
