package http

import (
	"errors"
	"net/http"

	domain "loan-engine/internal/domain/loan"
	"loan-engine/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	UserID       string `json:"user_id" validate:"required,hex32"`
	Amount       int64  `json:"amount" validate:"gte=0"`
	CurrencyCode string `json:"currency_code" validate:"currency"`
	Terms        int    `json:"terms" validate:"gt=0"`
	ProcessedAt  string `json:"processed_at" validate:"datetime=2006-01-02"`
}

type repayLoanReq struct {
	Amount       int64  `json:"amount" validate:"gt=0"`
	CurrencyCode string `json:"currency_code" validate:"currency"`
	ReceivedAt   string `json:"received_at" validate:"datetime=2006-01-02"`
}

// bindAndValidate writes the 400/422 response itself and reports whether the handler may go on.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateLoan(c.Request().Context(), loan.CreateLoanInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.GetLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	var req repayLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.RepayLoan(c.Request().Context(), loan.RepayLoanInput{
		LoanID:       c.Param("loan_id"),
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		ReceivedAt:   req.ReceivedAt,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
