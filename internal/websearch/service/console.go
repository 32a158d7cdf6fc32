package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/lk2023060901/nitionsearch-console/internal/pkg/errors"
	"github.com/lk2023060901/nitionsearch-console/internal/pkg/logger"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/biz"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/view"
	"go.uber.org/zap"
)

const (
	consolePrompt = "search> "
	consoleHelp   = `Type a query and press Enter to search.
  :page N   go to page N (must be shown below the results)
  :next     next page
  :prev     previous page
  :help     show this help
  :quit     exit`
)

// Console is the terminal front end: one line of input is one user event
type Console struct {
	uc     *biz.SearchUseCase
	logger *logger.Logger
	policy view.MarkupPolicy
	out    io.Writer
}

func NewConsole(uc *biz.SearchUseCase, policy view.MarkupPolicy, out io.Writer, logger *logger.Logger) *Console {
	return &Console{
		uc:     uc,
		logger: logger,
		policy: policy,
		out:    out,
	}
}

// Run reads commands from in until :quit, EOF or ctx is done
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(c.out, consoleHelp)

	for {
		fmt.Fprint(c.out, consolePrompt)
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		quit, err := c.Exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(c.out, err.Error())
		}
		if quit {
			return nil
		}
	}
}

// Exec handles one input line. The returned error is a usage message for
// the user; search failures are already part of the rendered page.
func (c *Console) Exec(ctx context.Context, line string) (quit bool, err error) {
	cmd := strings.TrimSpace(line)

	switch {
	case cmd == ":quit" || cmd == ":q":
		return true, nil
	case cmd == ":help":
		fmt.Fprintln(c.out, consoleHelp)
		return false, nil
	case cmd == ":next":
		return false, c.activateKind(ctx, view.ControlNext)
	case cmd == ":prev":
		return false, c.activateKind(ctx, view.ControlPrevious)
	case strings.HasPrefix(cmd, ":page"):
		page, convErr := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(cmd, ":page")))
		if convErr != nil {
			return false, errors.New("usage: :page N")
		}
		return false, c.activatePage(ctx, page)
	case strings.HasPrefix(cmd, ":"):
		return false, fmt.Errorf("unknown command %q, type :help", cmd)
	}

	// a submission keeps the raw text; trimming happens when the request is built
	if err := c.uc.Submit(ctx, line); apperrors.Is(err, apperrors.ErrSearchEmptyQuery) {
		return false, nil
	}
	c.render()
	return false, nil
}

func (c *Console) activateKind(ctx context.Context, kind view.ControlKind) error {
	ctl, ok := view.FindKind(displayedControls(c.uc.State()), kind)
	if !ok {
		return fmt.Errorf("no %s page", kind)
	}
	c.activate(ctx, ctl)
	return nil
}

func (c *Console) activatePage(ctx context.Context, page int) error {
	ctl, ok := controlFor(c.uc.State(), page)
	if !ok {
		return fmt.Errorf("page %d is not shown", page)
	}
	c.activate(ctx, ctl)
	return nil
}

func (c *Console) activate(ctx context.Context, ctl view.Control) {
	c.logger.Debug("activating pagination control",
		zap.Stringer("kind", ctl.Kind),
		zap.Int("target", ctl.Target),
	)
	_ = c.uc.Activate(ctx, ctl.Target)
	c.render()
}

func (c *Console) render() {
	page := view.RenderPage(c.uc.State(), view.Options{Policy: c.policy})
	if err := view.RenderText(c.out, page); err != nil {
		c.logger.Error("failed to render page", zap.Error(err))
	}
}
