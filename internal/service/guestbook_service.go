package service

import (
	"context"
	"errors"
	"strings"

	"oak-village-be/internal/dto"
	"oak-village-be/internal/repository/localstore"
)

var ErrEmptySignature = errors.New("guestbook: empty signature")

type IGuestbookService interface {
	Sign(ctx context.Context, name string) (*dto.GuestbookResponse, error)
	List(ctx context.Context) (*dto.GuestbookResponse, error)
}

type guestbookService struct {
	repo *localstore.GuestbookRepository
}

func NewGuestbookService(repo *localstore.GuestbookRepository) IGuestbookService {
	return &guestbookService{
		repo: repo,
	}
}

func (s *guestbookService) Sign(ctx context.Context, name string) (*dto.GuestbookResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySignature
	}
	if err := s.repo.Append(name); err != nil {
		return nil, err
	}
	return &dto.GuestbookResponse{Signatures: s.repo.List()}, nil
}

func (s *guestbookService) List(ctx context.Context) (*dto.GuestbookResponse, error) {
	return &dto.GuestbookResponse{Signatures: s.repo.List()}, nil
}
