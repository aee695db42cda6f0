package db

import (
	"log"
	"sync"

	"golang.org/x/sync/singleflight"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/linkdeck/linkdeck/internal/models"
)

// Conn is the process-wide database handle. The connection is opened lazily
// on first use: concurrent first callers share a single connection attempt,
// a failed attempt is retried on the next request, and a successful one pins
// the handle for the life of the process.
type Conn struct {
	open  func() (*gorm.DB, error)
	group singleflight.Group

	mu  sync.RWMutex
	gdb *gorm.DB
}

func New(dsn string) *Conn {
	return &Conn{
		open: func() (*gorm.DB, error) {
			gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})

			if err != nil {
				return nil, err
			}

			if err := Migrate(gdb); err != nil {
				return nil, err
			}

			return gdb, nil
		},
	}
}

// NewWithDB wraps an already-open handle, bypassing lazy initialization.
func NewWithDB(gdb *gorm.DB) *Conn {
	return &Conn{gdb: gdb}
}

// Get returns the shared handle, connecting and migrating on first use.
func (c *Conn) Get() (*gorm.DB, error) {
	c.mu.RLock()
	gdb := c.gdb
	c.mu.RUnlock()

	if gdb != nil {
		return gdb, nil
	}

	v, err, _ := c.group.Do("connect", func() (interface{}, error) {
		c.mu.RLock()
		existing := c.gdb
		c.mu.RUnlock()

		if existing != nil {
			return existing, nil
		}

		gdb, err := c.open()

		if err != nil {
			log.Printf("Database initialization failed: %v", err)
			return nil, err
		}

		c.mu.Lock()
		c.gdb = gdb
		c.mu.Unlock()

		return gdb, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*gorm.DB), nil
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Site{},
		&models.Config{},
	)
}
