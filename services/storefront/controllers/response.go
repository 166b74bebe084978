package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
)

func respond(ctx *gin.Context, status int, message string, data interface{}) {
	ctx.JSON(status, apperrors.Response{Success: true, Message: message, Data: data})
}

// fail hands err to apperrors.ErrorMiddleware, which writes the envelope.
func fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.Abort()
}

// parsePaginationParams extracts and validates pagination parameters
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const MaxLimit = 100
	const DefaultPage = 1
	const DefaultLimit = 10

	pageInt := DefaultPage
	limitInt := DefaultLimit

	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limitInt = l
		if limitInt > MaxLimit {
			limitInt = MaxLimit
		}
	}

	return pageInt, limitInt
}
