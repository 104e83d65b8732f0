package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yizeng/geoshapes/internal/domain"
	"github.com/yizeng/geoshapes/internal/repository"
)

var ErrInvalidAddress = repository.ErrInvalidAddress

type LedgerRepository interface {
	TokensOfOwner(ctx context.Context, owner string) ([]domain.TokenID, error)
	MintedBy(ctx context.Context, minter string) (uint64, error)
}

// LedgerService answers read-only questions about any account, independent
// of the wallet session.
type LedgerService struct {
	repo LedgerRepository
	art  *ArtworkService
}

func NewLedgerService(repo LedgerRepository, art *ArtworkService) *LedgerService {
	return &LedgerService{
		repo: repo,
		art:  art,
	}
}

func (s *LedgerService) GetAccountTokens(ctx context.Context, owner string) ([]TokenView, error) {
	ids, err := s.repo.TokensOfOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidAddress) {
			return nil, ErrInvalidAddress
		}

		return nil, fmt.Errorf("s.repo.TokensOfOwner -> %w", err)
	}

	views := make([]TokenView, 0, len(ids))
	for _, id := range ids {
		views = append(views, s.art.View(id))
	}

	return views, nil
}

func (s *LedgerService) GetMintedBy(ctx context.Context, minter string) (uint64, error) {
	count, err := s.repo.MintedBy(ctx, minter)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidAddress) {
			return 0, ErrInvalidAddress
		}

		return 0, fmt.Errorf("s.repo.MintedBy -> %w", err)
	}

	return count, nil
}
