package auth

import (
	"context"
	"sync"

	auth_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/auth"
	interfaces "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Interfaces"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeAdminRepo struct {
	mu      sync.Mutex
	admins  map[string]*auth_models.Admin
	err     error
	lookups int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*auth_models.Admin{}}
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*auth_models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	return f.admins[username], nil
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *auth_models.Admin) (*auth_models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[admin.Username]; ok {
		return nil, interfaces.ErrDuplicate
	}
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	f.admins[admin.Username] = admin
	return admin, nil
}
