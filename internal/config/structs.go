package config

import (
	"time"

	"github.com/melitabakes/bakery/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Storage   Storage
	Seed      Seed
}

// Webserver implement webserver settings.
type Webserver struct {
	Port           int           // listening port for the webserver
	ShutDownTime   int           // wait time for shutdown in seconds
	URL            string        // base url for the webserver
	RequestTimeout time.Duration // upper bound for store and blob calls of one request
	Session        Session       // session settings
}

// Storage selects and configures the blob store.
type Storage struct {
	Driver        string // s3, local or memory
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	UsePathStyle  bool
	PublicURL     string // base of the publicly resolvable object URLs
	LocalPath     string // root directory for the local driver
	CakeBucket    string
	AssetBucket   string
	MaxUploadSize int64 // bytes
}

// Seed holds the admin credential created on an empty admins table.
type Seed struct {
	AdminEmail    string
	AdminPassword string
}
