package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/types"
)

var (
	ErrTargetNotFound = errors.New("target not found")
	ErrAlreadyLinked  = errors.New("link already exists")
	ErrLinkNotFound   = errors.New("link does not exist")
	ErrSelfFollow     = errors.New("cannot follow yourself")
)

// LinkKind identifies one of the three supported link tables.
type LinkKind string

const (
	LinkFavorite LinkKind = "favorite"
	LinkCart     LinkKind = "cart"
	LinkFollow   LinkKind = "follow"
)

// linkSpec describes one link kind: how to verify and project its target,
// which row to write, and which messages the handlers should render.
// Favorites, cart entries and follows share the same toggle flow, so the
// three are driven by this table instead of three copies of the logic.
type linkSpec struct {
	pairWhere  string
	model      func() any
	newRow     func(principal, target uuid.UUID) any
	forbidSelf bool
	existsMsg  string
	removedMsg string
}

var linkSpecs = map[LinkKind]linkSpec{
	LinkFavorite: {
		pairWhere: "user_id = ? AND recipe_id = ?",
		model:     func() any { return &models.Favorite{} },
		newRow: func(principal, target uuid.UUID) any {
			return &models.Favorite{UserID: principal, RecipeID: target}
		},
		existsMsg:  "favorite.exists",
		removedMsg: "favorite.removed",
	},
	LinkCart: {
		pairWhere: "user_id = ? AND recipe_id = ?",
		model:     func() any { return &models.CartItem{} },
		newRow: func(principal, target uuid.UUID) any {
			return &models.CartItem{UserID: principal, RecipeID: target}
		},
		existsMsg:  "shoppingCart.exists",
		removedMsg: "shoppingCart.removed",
	},
	LinkFollow: {
		pairWhere: "user_id = ? AND author_id = ?",
		model:     func() any { return &models.Follow{} },
		newRow: func(principal, target uuid.UUID) any {
			return &models.Follow{UserID: principal, AuthorID: target}
		},
		forbidSelf: true,
		existsMsg:  "follow.exists",
		removedMsg: "follow.removed",
	},
}

// ExistsMessage returns the message ID rendered on a duplicate add.
func ExistsMessage(kind LinkKind) string { return linkSpecs[kind].existsMsg }

// RemovedMessage returns the message ID rendered on a successful remove.
func RemovedMessage(kind LinkKind) string { return linkSpecs[kind].removedMsg }

// LinkService toggles join rows between a principal and a target,
// keeping at most one row per (principal, target, kind).
type LinkService struct {
	db *gorm.DB
}

func NewLinkService(db *gorm.DB) *LinkService {
	return &LinkService{db: db}
}

// Add creates the link row and returns the target's projection
// (types.RecipeSummary for favorite/cart, types.UserSummary for follow).
// The existence check and the insert run inside one transaction; the
// composite unique index backstops concurrent duplicates, and its
// violation is reported as ErrAlreadyLinked as well.
func (s *LinkService) Add(ctx context.Context, kind LinkKind, principalID, targetID uuid.UUID) (any, error) {
	spec, ok := linkSpecs[kind]
	if !ok {
		return nil, errors.New("unknown link kind: " + string(kind))
	}
	if spec.forbidSelf && principalID == targetID {
		return nil, ErrSelfFollow
	}

	var projection any
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.loadTarget(tx, kind, principalID, targetID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(spec.model()).
			Where(spec.pairWhere, principalID, targetID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyLinked
		}

		if err := tx.Create(spec.newRow(principalID, targetID)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLinked
			}
			return err
		}
		projection = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A fresh follow is by definition subscribed.
	if summary, ok := projection.(*types.UserSummary); ok {
		summary.IsSubscribed = true
	}
	return projection, nil
}

// Remove deletes the link row. ErrLinkNotFound when no row exists.
func (s *LinkService) Remove(ctx context.Context, kind LinkKind, principalID, targetID uuid.UUID) error {
	spec, ok := linkSpecs[kind]
	if !ok {
		return errors.New("unknown link kind: " + string(kind))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(spec.pairWhere, principalID, targetID).Delete(spec.model())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLinkNotFound
		}
		return nil
	})
}

// Linked reports whether the link row currently exists.
func (s *LinkService) Linked(ctx context.Context, kind LinkKind, principalID, targetID uuid.UUID) (bool, error) {
	spec, ok := linkSpecs[kind]
	if !ok {
		return false, errors.New("unknown link kind: " + string(kind))
	}
	var count int64
	err := s.db.WithContext(ctx).Model(spec.model()).
		Where(spec.pairWhere, principalID, targetID).
		Count(&count).Error
	return count > 0, err
}

// Preview returns the target's projection without touching the link,
// the read behind GET on the link-management endpoints.
func (s *LinkService) Preview(ctx context.Context, kind LinkKind, principalID, targetID uuid.UUID) (any, error) {
	if _, ok := linkSpecs[kind]; !ok {
		return nil, errors.New("unknown link kind: " + string(kind))
	}
	return s.loadTarget(s.db.WithContext(ctx), kind, principalID, targetID)
}

func (s *LinkService) loadTarget(tx *gorm.DB, kind LinkKind, principalID, targetID uuid.UUID) (any, error) {
	if kind == LinkFollow {
		var user models.User
		if err := tx.First(&user, "id = ?", targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTargetNotFound
			}
			return nil, err
		}
		summary := &types.UserSummary{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		}
		var followed int64
		if err := tx.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", principalID, targetID).
			Count(&followed).Error; err != nil {
			return nil, err
		}
		summary.IsSubscribed = followed > 0
		return summary, nil
	}

	var recipe models.Recipe
	if err := tx.First(&recipe, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return &types.RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}, nil
}
