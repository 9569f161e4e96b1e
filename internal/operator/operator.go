package operator

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Operator is the worker that processes items from the queue. It owns the
// transactional boundary of every mutation: begin, perform, recompute the
// running balances of each affected account exactly once, commit. A failed
// recompute rolls the whole mutation back, so readers never observe a
// transaction without a converged running balance.
type Operator struct {
	storage   *storage.Storage
	queue     chan ActionItem
	recompute ledger.RecomputeFunc
}

func NewOperator(s *storage.Storage, queue chan ActionItem) *Operator {
	return &Operator{
		storage:   s,
		queue:     queue,
		recompute: ledger.Recompute,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		item.response <- ActionItemResponse{err: err}
		return
	}

	// One recompute pass per affected account per external mutation,
	// however many rows the mutation wrote.
	for _, accountID := range dedupe(item.action.Accounts()) {
		if err = o.recompute(item.ctx, writer.Transaction, accountID); err != nil {
			_ = writer.Rollback()
			item.response <- ActionItemResponse{err: err}
			return
		}
	}

	if err = writer.Commit(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
