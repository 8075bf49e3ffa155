package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/fanfou-go/client/internal/shardqueue"
)

// LookupUsers fetches the profiles of ids and returns them in input order.
// Each distinct id is requested once, on the lookup executor keyed by id;
// recoverable failures are retried with exponential backoff. The first
// failure cancels the remaining lookups and is returned.
func (c *Client) LookupUsers(ctx context.Context, ids []string) ([]*User, error) {
	if len(ids) == 0 {
		return []*User{}, nil
	}
	exec, err := c.executor()
	if err != nil {
		return nil, err
	}

	unique := make(map[string]*User, len(ids))
	for _, id := range ids {
		unique[id] = nil
	}

	type result struct {
		id   string
		user *User
	}
	results := make(chan result, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupLimit(c.lookupCfg))
	for id := range unique {
		g.Go(func() error {
			var user *User
			err := exec.Do(gctx, id, shardqueue.JobFunc(func(ctx context.Context) error {
				u, err := c.GetUserProfile(ctx, id)
				if err != nil {
					return err
				}
				user = u
				return nil
			}))
			if err != nil {
				lookupUsersTotal.WithLabelValues("error").Inc()
				if errors.Is(err, shardqueue.ErrQueueFull) {
					return fmt.Errorf("%w: %v", ErrBackPressure, err)
				}
				return fmt.Errorf("lookup %s: %w", id, err)
			}
			lookupUsersTotal.WithLabelValues("ok").Inc()
			results <- result{id: id, user: user}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)
	for r := range results {
		unique[r.id] = r.user
	}

	users := make([]*User, len(ids))
	for i, id := range ids {
		u := *unique[id]
		users[i] = &u
	}
	return users, nil
}

// lookupLimit bounds in-flight lookups by the executor's total queue
// capacity. Ids that hash to the same shard can still fill its queue, which
// surfaces as ErrBackPressure.
func lookupLimit(cfg shardqueue.Config) int {
	shards, size := cfg.Shards, cfg.QueueSize
	if shards <= 0 {
		shards = 4
	}
	if size <= 0 {
		size = 128
	}
	return shards * size
}

// executor starts the lookup executor on first use.
func (c *Client) executor() (executor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if c.exec == nil {
		cfg := c.lookupCfg
		cfg.ErrorHandler = func(err error) {
			log.Warn().Err(err).Msg("user lookup failed")
		}
		c.exec = shardqueue.NewShardExecutor(cfg)
	}
	return c.exec, nil
}
