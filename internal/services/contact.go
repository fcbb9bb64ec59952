package services

import (
	"context"

	"github.com/mastergurukulam/apiserver/internal/notify"
	"github.com/mastergurukulam/apiserver/types"
)

// ContactRepository defines persistence operations for contact enquiries.
type ContactRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Contact, int, error)
	Get(ctx context.Context, id int) (types.Contact, error)
	Create(ctx context.Context, contact types.Contact) (types.Contact, error)
	Delete(ctx context.Context, id int) error
}

// ContactService encapsulates contact-enquiry use-cases. New enquiries
// are announced through the notifier; a publish failure never fails the
// submission.
type ContactService struct {
	repo     ContactRepository
	notifier *notify.Notifier
}

func NewContactService(repo ContactRepository, notifier *notify.Notifier) *ContactService {
	return &ContactService{repo: repo, notifier: notifier}
}

func (s *ContactService) List(ctx context.Context, offset, limit int) ([]types.Contact, int, error) {
	return s.repo.List(ctx, offset, clampLimit(limit))
}

func (s *ContactService) Get(ctx context.Context, id int) (types.Contact, error) {
	return s.repo.Get(ctx, id)
}

func (s *ContactService) Create(ctx context.Context, contact types.Contact) (types.Contact, error) {
	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		return types.Contact{}, err
	}
	s.notifier.EnquiryReceived(ctx, created)
	return created, nil
}

func (s *ContactService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
