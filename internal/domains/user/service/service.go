package service

import (
	"context"

	"novalib-backend/internal/domains/user"
	"novalib-backend/pkg/logger"
)

// UserService wraps the user and department repositories with the
// admin-facing use cases.
type UserService struct {
	users user.Repository
	depts user.DepartmentRepository
}

func NewUserService(users user.Repository, depts user.DepartmentRepository) *UserService {
	return &UserService{users: users, depts: depts}
}

func (s *UserService) Create(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := &user.User{
		Barcode:      req.Barcode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user created", map[string]interface{}{
		"user_id": u.ID,
		"barcode": u.Barcode,
	})
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*user.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id int64, req user.UpdateUserRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.DepartmentID != nil {
		u.DepartmentID = req.DepartmentID
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("user deleted", map[string]interface{}{"user_id": id})
	return nil
}

func (s *UserService) CreateDepartment(ctx context.Context, req user.CreateDepartmentRequest) (*user.Department, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	d := &user.Department{Name: req.Name}
	if err := s.depts.CreateDepartment(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *UserService) ListDepartments(ctx context.Context) ([]user.Department, error) {
	return s.depts.ListDepartments(ctx)
}

func (s *UserService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.depts.DeleteDepartment(ctx, id)
}
