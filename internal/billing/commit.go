package billing

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"vajanpos/backend/internal/domain"
)

// SendFunc delivers a frozen snapshot to the outside world, typically
// render-then-dispatch. A nil return means the receipt is out the door.
type SendFunc func(ctx context.Context, snap domain.BillSnapshot) error

// CommitController drives the commit-to-print flow for one cart. It
// admits one commit at a time and takes the bill snapshot before any
// dispatch work starts, so mutations racing the print can never leak
// into the printed receipt.
//
// On success the cart is reset in a single step and the snapshot is
// returned. On dispatch failure the cart is left exactly as it was so
// the operator can retry. The controller is reusable for the process
// lifetime.
type CommitController struct {
	mu         sync.Mutex
	committing bool

	cart *Cart
	now  func() time.Time
	roll func() int
}

func NewCommitController(cart *Cart) *CommitController {
	return &CommitController{
		cart: cart,
		now:  func() time.Time { return time.Now() },
		roll: func() int { return rand.IntN(1000) + 1 },
	}
}

// Commit freezes the current selection, hands the snapshot to send, and
// resets the cart only if send succeeds.
func (cc *CommitController) Commit(
	ctx context.Context,
	catalog []domain.CatalogItem,
	cfg domain.BillingConfig,
	mode domain.PaymentMode,
	send SendFunc,
) (domain.BillSnapshot, error) {
	cc.mu.Lock()
	if cc.committing {
		cc.mu.Unlock()
		return domain.BillSnapshot{}, ErrCommitInProgress
	}
	cc.committing = true
	cc.mu.Unlock()

	defer func() {
		cc.mu.Lock()
		cc.committing = false
		cc.mu.Unlock()
	}()

	// The snapshot is the point of no return: everything below works
	// from this frozen value, never from the live cart.
	snap, err := ComputeSnapshot(cc.cart.Quantities(), catalog, cfg, mode, cc.roll(), cc.now())
	if err != nil {
		return domain.BillSnapshot{}, err
	}

	if err := send(ctx, snap); err != nil {
		return domain.BillSnapshot{}, fmt.Errorf("%w: %v", ErrPrintDispatch, err)
	}

	cc.cart.Reset()
	return snap, nil
}

// Committing reports whether a commit currently holds the controller.
func (cc *CommitController) Committing() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.committing
}
