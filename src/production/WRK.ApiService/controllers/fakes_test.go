package controllers

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	auth_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/auth"
	workshop_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/workshop"
	interfaces "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Interfaces"
)

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*auth_models.Admin
	err    error
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*auth_models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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
	admin.ID = primitive.NewObjectID()
	f.admins[admin.Username] = admin
	return admin, nil
}

type fakeRegistrationRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*workshop_models.Registration
	err       error
	listCalls int
}

func (f *fakeRegistrationRepo) Create(_ context.Context, r *workshop_models.Registration) (*workshop_models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[r.Email]; ok {
		return nil, interfaces.ErrDuplicate
	}
	r.ID = primitive.NewObjectID()
	f.byEmail[r.Email] = r
	return r, nil
}

func (f *fakeRegistrationRepo) GetByEmail(_ context.Context, email string) (*workshop_models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byEmail[email], nil
}

func (f *fakeRegistrationRepo) ListAll(context.Context) ([]*workshop_models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*workshop_models.Registration, 0, len(f.byEmail))
	for _, r := range f.byEmail {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context, *readpref.ReadPref) error { return p.err }
