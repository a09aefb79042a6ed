package driver

import (
	"context"
	"fmt"
	"sync"
)

type fillConfig struct {
	workers      int
	onSpanFilled func(length int)
}

type FillOption func(config *fillConfig) error

// Workers makes Fill compute the cells of the same span length with n goroutines.
func Workers(n int) FillOption {
	return func(config *fillConfig) error {
		if n < 1 {
			return fmt.Errorf("the number of workers must be greater than or equal to 1; passed: %v", n)
		}
		config.workers = n
		return nil
	}
}

// OnSpanFilled registers a function called after the cells of each span length are complete.
func OnSpanFilled(f func(length int)) FillOption {
	return func(config *fillConfig) error {
		config.onSpanFilled = f
		return nil
	}
}

// Fill computes the cells of length 2 to n in increasing order of length by combining pairs of adjacent spans with
// the rules of the form `A -> B C`. Every cell of length l is complete before any cell of length l+1 is computed,
// so a cell is never read before all the cells it depends on are final.
//
// Fill checks ctx between span lengths. When ctx is done, Fill returns ctx.Err() and the cells of the lengths
// already processed remain complete; calling Fill again resumes the work. Filling a filled chart changes nothing.
func (c *Chart) Fill(ctx context.Context, opts ...FillOption) error {
	config := &fillConfig{
		workers: 1,
	}
	for _, opt := range opts {
		err := opt(config)
		if err != nil {
			return err
		}
	}

	n := len(c.word)
	for l := 2; l <= n; l++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.fillSpanLength(l, config.workers)
		if l > c.filled {
			c.filled = l
		}
		if config.onSpanFilled != nil {
			config.onSpanFilled(l)
		}
	}

	return nil
}

func (c *Chart) fillSpanLength(l int, workers int) {
	n := len(c.word)
	if workers <= 1 || n-l+1 == 1 {
		for i := 0; i <= n-l; i++ {
			c.fillCell(i, i+l)
		}
		return
	}

	// Each goroutine is the only writer of its cell and reads only shorter, complete cells.
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i := 0; i <= n-l; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			c.fillCell(i, i+l)
		}(i)
	}
	wg.Wait()
}

// fillCell adds to the cell [i, j) a tree `A(t1, t2)` for every split point k, every tree t1 labeled B in [i, k),
// every tree t2 labeled C in [k, j), and every rule `A -> B C`.
func (c *Chart) fillCell(i, j int) {
	target := c.cell(i, j)
	for k := i + 1; k < j; k++ {
		left := c.cell(i, k)
		right := c.cell(k, j)
		for _, b := range left.labels {
			if !c.gram.HasBinaryRulesStartingWith(b) {
				continue
			}
			for _, cSym := range right.labels {
				for _, rule := range c.gram.BinaryRules(b, cSym) {
					for _, t1 := range left.byLabel[b] {
						for _, t2 := range right.byLabel[cSym] {
							target.add(NewBinary(rule.LHS(), t1, t2))
						}
					}
				}
			}
		}
	}
}
