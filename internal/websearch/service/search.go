package service

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/nitionsearch-console/internal/pkg/errors"
	"github.com/lk2023060901/nitionsearch-console/internal/pkg/logger"
	"github.com/lk2023060901/nitionsearch-console/internal/pkg/response"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/biz"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/types"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/view"
	"go.uber.org/zap"
)

const (
	searchPath = "/search"
	pagePath   = "/page"
)

// SearchService serves the search page over HTTP. Every route drives the
// same SearchUseCase the terminal console uses.
type SearchService struct {
	uc     *biz.SearchUseCase
	logger *logger.Logger
	policy view.MarkupPolicy
	title  string
}

func NewSearchService(uc *biz.SearchUseCase, policy view.MarkupPolicy, title string, logger *logger.Logger) *SearchService {
	return &SearchService{
		uc:     uc,
		logger: logger,
		policy: policy,
		title:  title,
	}
}

// StateResponse is the payload of GET /api/state
type StateResponse struct {
	types.ViewState
	Controls []view.Control `json:"controls"`
}

func (s *SearchService) RegisterRoutes(r gin.IRouter) {
	r.GET("/", s.Index)
	r.GET(searchPath, s.Submit)
	r.GET(pagePath+"/:page", s.Activate)
	r.GET("/api/state", s.State)
}

func (s *SearchService) options() view.Options {
	return view.Options{
		Policy:       s.policy,
		SearchAction: searchPath,
		PageHref:     pageHref,
	}
}

func pageHref(page int) string {
	return fmt.Sprintf("%s/%d", pagePath, page)
}

// Index renders the page from the current state
func (s *SearchService) Index(c *gin.Context) {
	doc := view.Document(s.title, view.RenderPage(s.uc.State(), s.options()))

	out, err := view.HTMLString(doc)
	if err != nil {
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer, "render page"))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

// Submit runs a query submission and sends the browser back to the page
func (s *SearchService) Submit(c *gin.Context) {
	s.handle(c, s.uc.Submit(c.Request.Context(), c.Query("query")))
	c.Redirect(http.StatusSeeOther, "/")
}

// Activate runs the pagination control targeting :page
func (s *SearchService) Activate(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		response.ErrorWithCode(c, apperrors.ErrInvalidParams, "page must be a positive integer")
		return
	}

	if _, ok := controlFor(s.uc.State(), page); !ok {
		response.ErrorWithCode(c, apperrors.ErrNotFound, fmt.Sprintf("no pagination control for page %d", page))
		return
	}

	s.handle(c, s.uc.Activate(c.Request.Context(), page))
	c.Redirect(http.StatusSeeOther, "/")
}

// State returns the view state and the controls currently displayed
func (s *SearchService) State(c *gin.Context) {
	state := s.uc.State()
	controls := displayedControls(state)
	if controls == nil {
		controls = []view.Control{}
	}
	response.Success(c, StateResponse{
		ViewState: state,
		Controls:  controls,
	})
}

// handle records a search error on the request; the page already shows the failure
func (s *SearchService) handle(c *gin.Context, err error) {
	if err == nil || apperrors.Is(err, apperrors.ErrSearchEmptyQuery) {
		return
	}
	_ = c.Error(err)
	s.logger.WithContext(c.Request.Context()).Debug("search request finished with error",
		zap.Int("code", apperrors.ExtractCode(err)),
	)
}

func displayedControls(state types.ViewState) []view.Control {
	return view.Controls(state.Pagination.TotalPages, state.Pagination.CurrentPage)
}

func controlFor(state types.ViewState, page int) (view.Control, bool) {
	return view.FindControl(displayedControls(state), page)
}
