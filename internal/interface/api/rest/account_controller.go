package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account-manager-api/internal/application/ports"
	domain "account-manager-api/internal/domain/account"
	"account-manager-api/internal/interface/api/rest/dto/account"
	"account-manager-api/internal/interface/api/rest/validator"
)

type AccountController struct {
	accountService ports.AccountService
	logger         *zap.Logger
}

func NewAccountController(
	r *gin.Engine,
	accountService ports.AccountService,
	logger *zap.Logger,
) *AccountController {
	ac := &AccountController{
		accountService: accountService,
		logger:         logger,
	}

	r.POST(RouteAccounts, ac.RegisterHandler)
	r.GET(RouteAccounts, ac.GetAccountsHandler)
	r.GET(RouteAccount, ac.GetAccountHandler)
	r.PATCH(RouteAccount, ac.UpdateAccountHandler)
	r.DELETE(RouteAccount, ac.DeleteAccountHandler)

	return ac
}

func (ac *AccountController) RegisterHandler(c *gin.Context) {
	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	in, err := account.ToDomainRegistration(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	v, err := ac.accountService.Register(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrPhoneAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to register an account"},
		)
		ac.logger.Error("Register() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, v)
}

func (ac *AccountController) GetAccountsHandler(c *gin.Context) {
	views, err := ac.accountService.FindAccounts(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get accounts"},
		)
		ac.logger.Error("FindAccounts() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, account.ResponseData{
		Data: views,
	})
}

func (ac *AccountController) GetAccountHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("account_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "account_id must be a valid UUID"},
		)
		return
	}

	v, err := ac.accountService.FindAccountByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get an account"},
		)
		ac.logger.Error("FindAccountByID() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, v)
}

func (ac *AccountController) UpdateAccountHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("account_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "account_id must be a valid UUID"},
		)
		return
	}

	var req account.PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidatePatch(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	patch, err := account.ToDomainPatch(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	v, err := ac.accountService.UpdateAccount(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrPhoneAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to update an account"},
			)
			ac.logger.Error("UpdateAccount() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, v)
}

func (ac *AccountController) DeleteAccountHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("account_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "account_id must be a valid UUID"},
		)
		return
	}

	v, err := ac.accountService.DeleteAccount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete an account"},
		)
		ac.logger.Error("DeleteAccount() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, v)
}
