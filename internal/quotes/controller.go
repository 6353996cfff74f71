// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package quotes

import (
	"context"
	"errors"
	"io"

	"github.com/apex/log"
)

// ErrQuit is returned by RunOnce when the user asks to leave.
var ErrQuit = errors.New("quit requested")

// Controller drives a View against a Model. Run must not be called
// concurrently.
type Controller struct {
	model *Model
	view  View

	// pending holds the result of a cycle abandoned by a cancelled Run. The
	// next Run waits for it so the view is never read by two cycles.
	pending chan error
}

// NewController returns a Controller for model and view.
func NewController(model *Model, view View) *Controller {
	return &Controller{model: model, view: view}
}

// RunOnce performs one select, show, optional add and list cycle. Bad
// selections and empty quotes are reported through the view and do not fail
// the cycle. It returns ErrQuit on a quit selection and io.EOF when input is
// exhausted.
func (c *Controller) RunOnce() error {
	line, err := c.view.SelectQuote()
	if err != nil {
		return err
	}

	sel := ParseSelection(line, c.model.Len())
	switch sel.Kind {
	case SelectQuit:
		return ErrQuit
	case SelectIndex, SelectRandom:
		quote, err := c.model.Quote(sel.Index)
		if err != nil {
			c.view.Error(err)
		} else {
			c.view.Show(quote)
		}
	default:
		log.Debugf("rejected selection %q: %s", sel.Input, sel.Kind)
		c.view.Error(sel.Err())
	}

	add, err := c.view.ConfirmAdd()
	if err != nil {
		return err
	}
	if add {
		text, err := c.view.NewQuote()
		if err != nil {
			return err
		}
		if err := c.model.Add(text); err != nil {
			c.view.Error(err)
		}
	}

	c.view.ShowAll(c.model.List())
	return nil
}

// Run repeats RunOnce until the user quits, input ends or ctx is done. Those
// are normal endings and return nil. A cycle blocked on input is abandoned
// when ctx is cancelled, and a later Run waits for it to finish before
// reading again.
func (c *Controller) Run(ctx context.Context) error {
	if c.pending != nil {
		select {
		case <-ctx.Done():
			return nil
		case err := <-c.pending:
			log.Debugf("abandoned quote cycle finished: %v", err)
			c.pending = nil
		}
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		done := make(chan error, 1)
		go func() { done <- c.RunOnce() }()

		select {
		case <-ctx.Done():
			log.Debug("quote console cancelled")
			c.pending = done
			return nil
		case err := <-done:
			switch {
			case err == nil:
			case errors.Is(err, ErrQuit), errors.Is(err, io.EOF):
				log.Debugf("quote console ended: %s", err)
				return nil
			default:
				return err
			}
		}
	}
}
