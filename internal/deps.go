package internal

import (
	"ishan/rms-api/internal/auth"
	"ishan/rms-api/internal/service"
	"ishan/rms-api/internal/store"
	"ishan/rms-api/internal/workflow"

	"gorm.io/gorm"
)

// Deps is passed explicitly to every handler instead of living in a global.
// The DB handle is opened once at startup and shared through here.
type Deps struct {
	DB       *gorm.DB
	Users    *store.UserStore
	Requests *store.RequestStore
	Auth     *auth.Service
	Workflow *workflow.Engine
	Receipts service.ReceiptStorage
}
