package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/peakform/storefront-api/internal/domain"
	"github.com/peakform/storefront-api/internal/repositories"
)

var (
	errCartRepositoryRequired = errors.New("cart service: repository is required")
	errCartCatalogRequired    = errors.New("cart service: catalog is required")
	errCartClockRequired      = errors.New("cart service: clock is required")
)

// ErrCartInvalidInput indicates the caller supplied invalid input.
var ErrCartInvalidInput = errors.New("cart service: invalid input")

// ErrCartUnavailable indicates the cart service cannot fulfil the request due to missing dependencies or backend issues.
var ErrCartUnavailable = errors.New("cart service: unavailable")

// ErrCartNotFound indicates the requested cart line does not exist.
var ErrCartNotFound = errors.New("cart service: not found")

// ErrCartConflict indicates the cart could not be updated due to concurrent modifications.
var ErrCartConflict = errors.New("cart service: conflict")

type cartProductFinder interface {
	GetProductByID(ctx context.Context, productID string) (Product, error)
}

// CartServiceDeps wires the repository, catalog, and event dependencies for cart operations.
type CartServiceDeps struct {
	Repository repositories.CartRepository
	Catalog    cartProductFinder
	Publisher  CartActivityPublisher
	Clock      func() time.Time
	Logger     func(context.Context, string, map[string]any)
}

type cartService struct {
	repo      repositories.CartRepository
	catalog   cartProductFinder
	publisher CartActivityPublisher
	now       func() time.Time
	logger    func(context.Context, string, map[string]any)
}

// NewCartService constructs a CartService enforcing dependency validation.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Repository == nil {
		return nil, errCartRepositoryRequired
	}
	if deps.Catalog == nil {
		return nil, errCartCatalogRequired
	}
	if deps.Clock == nil {
		return nil, errCartClockRequired
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	service := &cartService{
		repo:      deps.Repository,
		catalog:   deps.Catalog,
		publisher: deps.Publisher,
		now:       func() time.Time { return deps.Clock().UTC() },
		logger:    logger,
	}
	return service, nil
}

// GetCart loads the shopper's cart, returning an empty cart when none has been
// persisted yet.
func (s *cartService) GetCart(ctx context.Context, shopperID string) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return Cart{}, fmt.Errorf("%w: shopper id is required", ErrCartInvalidInput)
	}

	return s.loadOrInit(ctx, shopperID)
}

// AddItem adds quantity of a product to the cart, merging with an existing
// line for the same product. The updated cart is persisted and returned.
func (s *cartService) AddItem(ctx context.Context, cmd AddCartItemCommand) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}
	shopperID := strings.TrimSpace(cmd.ShopperID)
	productID := strings.TrimSpace(cmd.ProductID)
	if shopperID == "" {
		return Cart{}, fmt.Errorf("%w: shopper id is required", ErrCartInvalidInput)
	}
	if productID == "" {
		return Cart{}, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}
	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return Cart{}, fmt.Errorf("%w: quantity must be positive", ErrCartInvalidInput)
	}

	product, err := s.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return Cart{}, s.translateCatalogError(err)
	}
	if !product.InStock {
		return Cart{}, fmt.Errorf("%w: product %q is out of stock", ErrCartInvalidInput, productID)
	}

	cart, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Cart{}, err
	}

	now := s.now()
	if idx := cart.LineFor(productID); idx >= 0 {
		// Merge keeps the price-at-add snapshot; only the quantity moves.
		cart.Lines[idx].Quantity += quantity
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{
			Product:  product,
			Quantity: quantity,
			AddedAt:  now,
		})
	}
	cart.Open = true
	cart.UpdatedAt = now

	if err := s.repo.Save(ctx, cart); err != nil {
		return Cart{}, s.translateRepoError(err)
	}

	s.publishActivity(ctx, CartActivityMessage{
		ShopperID:   shopperID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		OccurredAt:  now,
	})

	return cart, nil
}

// UpdateQuantity sets the absolute quantity on an existing line. A quantity of
// zero or less removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, cmd UpdateCartQuantityCommand) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}
	shopperID := strings.TrimSpace(cmd.ShopperID)
	productID := strings.TrimSpace(cmd.ProductID)
	if shopperID == "" {
		return Cart{}, fmt.Errorf("%w: shopper id is required", ErrCartInvalidInput)
	}
	if productID == "" {
		return Cart{}, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}

	cart, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Cart{}, err
	}
	idx := cart.LineFor(productID)
	if idx < 0 {
		return Cart{}, fmt.Errorf("%w: product %q is not in the cart", ErrCartNotFound, productID)
	}

	if cmd.Quantity <= 0 {
		cart.Lines = removeLine(cart.Lines, productID)
	} else {
		cart.Lines[idx].Quantity = cmd.Quantity
	}
	cart.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, cart); err != nil {
		return Cart{}, s.translateRepoError(err)
	}
	return cart, nil
}

// RemoveItem removes a product's line from the cart. Removing a product that
// is not present is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, cmd RemoveCartItemCommand) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}
	shopperID := strings.TrimSpace(cmd.ShopperID)
	productID := strings.TrimSpace(cmd.ProductID)
	if shopperID == "" {
		return Cart{}, fmt.Errorf("%w: shopper id is required", ErrCartInvalidInput)
	}
	if productID == "" {
		return Cart{}, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}

	cart, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Cart{}, err
	}
	if cart.LineFor(productID) < 0 {
		return cart, nil
	}

	cart.Lines = removeLine(cart.Lines, productID)
	cart.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, cart); err != nil {
		return Cart{}, s.translateRepoError(err)
	}
	return cart, nil
}

// ClearCart deletes the stored cart and returns a fresh empty one.
func (s *cartService) ClearCart(ctx context.Context, shopperID string) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return Cart{}, fmt.Errorf("%w: shopper id is required", ErrCartInvalidInput)
	}

	// Clearing drops the stored document entirely; a missing document is
	// already clear.
	if err := s.repo.Delete(ctx, shopperID); err != nil {
		if translated := s.translateRepoError(err); !errors.Is(translated, ErrCartNotFound) {
			return Cart{}, translated
		}
	}
	return s.emptyCart(shopperID), nil
}

// SetOpen records whether the cart drawer is open on the storefront.
func (s *cartService) SetOpen(ctx context.Context, shopperID string, open bool) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}
	shopperID = strings.TrimSpace(shopperID)
	if shopperID == "" {
		return Cart{}, fmt.Errorf("%w: shopper id is required", ErrCartInvalidInput)
	}

	cart, err := s.loadOrInit(ctx, shopperID)
	if err != nil {
		return Cart{}, err
	}
	if cart.Open == open {
		return cart, nil
	}
	cart.Open = open
	cart.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, cart); err != nil {
		return Cart{}, s.translateRepoError(err)
	}
	return cart, nil
}

func (s *cartService) loadOrInit(ctx context.Context, shopperID string) (Cart, error) {
	cart, err := s.repo.Get(ctx, shopperID)
	if err != nil {
		translated := s.translateRepoError(err)
		if errors.Is(translated, ErrCartNotFound) {
			return s.emptyCart(shopperID), nil
		}
		return Cart{}, translated
	}
	return cart, nil
}

func (s *cartService) emptyCart(shopperID string) Cart {
	now := s.now()
	return Cart{
		ShopperID: shopperID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *cartService) publishActivity(ctx context.Context, message CartActivityMessage) {
	if s.publisher == nil {
		return
	}
	messageID, err := s.publisher.PublishCartActivity(ctx, message)
	if err != nil {
		s.logger(ctx, "cart activity publish failed", map[string]any{
			"shopper_id": message.ShopperID,
			"product_id": message.ProductID,
			"error":      err.Error(),
		})
		return
	}
	s.logger(ctx, "cart activity published", map[string]any{
		"product_id": message.ProductID,
		"message_id": messageID,
	})
}

func (s *cartService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return ErrCartNotFound
		case repoErr.IsConflict():
			return ErrCartConflict
		case repoErr.IsUnavailable():
			return ErrCartUnavailable
		}
		return ErrCartUnavailable
	}
	return ErrCartUnavailable
}

func (s *cartService) translateCatalogError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCatalogNotFound) {
		return fmt.Errorf("%w: unknown product", ErrCartInvalidInput)
	}
	if errors.Is(err, ErrCatalogInvalidInput) {
		return fmt.Errorf("%w: invalid product reference", ErrCartInvalidInput)
	}
	return ErrCartUnavailable
}

func removeLine(lines []domain.CartLine, productID string) []domain.CartLine {
	filtered := lines[:0]
	for _, line := range lines {
		if line.Product.ID == productID {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}
