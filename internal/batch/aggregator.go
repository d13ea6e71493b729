// Package batch collects files that arrive as one media group and hands the
// group over once no new files have shown up for a while.
//
// The platform never marks the last file of a group, so completion is inferred
// from quiescence: see settler for the exact rule.
package batch

import (
	"TeleCloud/internal/model"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Owner identifies who sent a group and where to answer.
type Owner struct {
	UserID int64
	ChatID int64
}

// Batch is a settled group, items in arrival order.
type Batch struct {
	GroupID string
	Owner   Owner
	Items   []model.FileDescriptor
}

// SettleFunc receives every settled batch exactly once.
type SettleFunc func(ctx context.Context, b Batch)

type group struct {
	owner Owner
	items []model.FileDescriptor
	gen   uint64
	timer Timer
	st    settler
}

// Aggregator buffers grouped arrivals. At most one timer is live per group;
// every arrival stops it and starts settle detection over.
type Aggregator struct {
	policy   Policy
	clock    Clock
	onSettle SettleFunc
	logger   *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	groups map[string]*group
	closed bool
}

// New creates an aggregator. onSettle runs on the clock's goroutine.
func New(policy Policy, clk Clock, onSettle SettleFunc, logger *zap.SugaredLogger) *Aggregator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Aggregator{
		policy:   policy.normalized(),
		clock:    clk,
		onSettle: onSettle,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		groups:   make(map[string]*group),
	}
}

// Add appends d to the buffer of groupID and restarts settle detection for it.
// It never blocks on the wait itself.
func (a *Aggregator) Add(owner Owner, groupID string, d model.FileDescriptor) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	g, ok := a.groups[groupID]
	if !ok {
		g = &group{owner: owner, st: newSettler(a.policy)}
		a.groups[groupID] = g
	}
	g.items = append(g.items, d)

	// supersede the running chain: its callbacks carry the old generation
	g.gen++
	if g.timer != nil {
		g.timer.Stop()
	}
	a.scheduleLocked(groupID, g, g.st.start())

	a.logger.Debugw("media group arrival", "group_id", groupID, "buffered", len(g.items))
}

// Buffered returns how many files wait in groupID's buffer.
func (a *Aggregator) Buffered(groupID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if g, ok := a.groups[groupID]; ok {
		return len(g.items)
	}
	return 0
}

// Groups returns the number of unsettled groups.
func (a *Aggregator) Groups() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.groups)
}

// Close stops all timers and drops unsettled buffers. Later arrivals are ignored.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	for id, g := range a.groups {
		if g.timer != nil {
			g.timer.Stop()
		}
		if len(g.items) > 0 {
			a.logger.Warnw("dropping unsettled media group", "group_id", id, "buffered", len(g.items))
		}
	}
	a.groups = make(map[string]*group)
	a.cancel()
}

func (a *Aggregator) scheduleLocked(groupID string, g *group, wait time.Duration) {
	gen := g.gen
	g.timer = a.clock.AfterFunc(wait, func() { a.tick(groupID, gen) })
}

func (a *Aggregator) tick(groupID string, gen uint64) {
	a.mu.Lock()
	g, ok := a.groups[groupID]
	if a.closed || !ok || g.gen != gen {
		// superseded or already flushed
		a.mu.Unlock()
		return
	}

	wait, settled := g.st.observe(len(g.items))
	if !settled {
		a.scheduleLocked(groupID, g, wait)
		a.mu.Unlock()
		return
	}

	delete(a.groups, groupID)
	b := Batch{GroupID: groupID, Owner: g.owner, Items: g.items}
	a.mu.Unlock()

	a.flush(b)
}

func (a *Aggregator) flush(b Batch) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorw("settle handler panicked", "group_id", b.GroupID, "panic", r)
		}
	}()
	a.logger.Infow("media group settled", "group_id", b.GroupID, "user_id", b.Owner.UserID, "files", len(b.Items))
	a.onSettle(a.ctx, b)
}
