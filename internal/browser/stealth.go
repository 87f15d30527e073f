package browser

import (
	"context"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay waits between min and max milliseconds, or until ctx is done.
func RandomDelay(ctx context.Context, min, max int) error {
	d := min
	if max > min {
		d = rand.Intn(max-min+1) + min
	}
	t := time.NewTimer(time.Duration(d) * time.Millisecond)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MouseJiggle moves the mouse to a few random points inside the viewport.
func MouseJiggle(ctx context.Context, page playwright.Page) error {
	width, height := 1000, 700
	if vp := page.ViewportSize(); vp != nil && vp.Width > 0 && vp.Height > 0 {
		width, height = vp.Width, vp.Height
	}
	for i := 0; i < 3; i++ {
		if err := page.Mouse().Move(float64(rand.Intn(width)), float64(rand.Intn(height))); err != nil {
			return err
		}
		if err := RandomDelay(ctx, 100, 300); err != nil {
			return err
		}
	}
	return nil
}

// SmoothScroll scrolls down, corrects a little, then jumps to the bottom to trigger lazy loading.
func SmoothScroll(ctx context.Context, page playwright.Page) error {
	if err := page.Mouse().Wheel(0, 500); err != nil {
		return err
	}
	if err := RandomDelay(ctx, 300, 700); err != nil {
		return err
	}
	if err := page.Mouse().Wheel(0, -200); err != nil {
		return err
	}
	if err := RandomDelay(ctx, 200, 500); err != nil {
		return err
	}
	_, err := page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
	return err
}
