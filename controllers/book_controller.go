package controllers

import (
	"net/http"

	"bookstore-service/models"
	"bookstore-service/services"

	"github.com/gin-gonic/gin"
)

// BookController handles HTTP requests for books and categories.
type BookController struct {
	catalog services.CatalogService
}

// NewBookController creates a new BookController.
func NewBookController(catalog services.CatalogService) *BookController {
	return &BookController{catalog: catalog}
}

// ListBooks handles GET /books.
func (bc *BookController) ListBooks(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	resp, svcErr := bc.catalog.ListBooks(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetBook handles GET /books/:id.
func (bc *BookController) GetBook(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	book, svcErr := bc.catalog.GetBook(ctx.Request.Context(), id)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, book)
}

// CreateBook handles POST /books (admin only).
func (bc *BookController) CreateBook(ctx *gin.Context) {
	var req models.BookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	book, svcErr := bc.catalog.CreateBook(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, book)
}

// UpdateBook handles PUT /books/:id (admin only).
func (bc *BookController) UpdateBook(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req models.BookRequest
	if !bindJSON(ctx, &req) {
		return
	}

	book, svcErr := bc.catalog.UpdateBook(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /books/:id (admin only).
func (bc *BookController) DeleteBook(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := bc.catalog.DeleteBook(ctx.Request.Context(), id); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListCategories handles GET /categories.
func (bc *BookController) ListCategories(ctx *gin.Context) {
	categories, svcErr := bc.catalog.ListCategories(ctx.Request.Context())
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /categories/:id.
func (bc *BookController) GetCategory(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	category, svcErr := bc.catalog.GetCategory(ctx.Request.Context(), id)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// ListCategoryBooks handles GET /categories/:id/books.
func (bc *BookController) ListCategoryBooks(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	books, svcErr := bc.catalog.ListBooksByCategory(ctx.Request.Context(), id)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, books)
}

// CreateCategory handles POST /categories (admin only).
func (bc *BookController) CreateCategory(ctx *gin.Context) {
	var req models.CategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	category, svcErr := bc.catalog.CreateCategory(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /categories/:id (admin only).
func (bc *BookController) UpdateCategory(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req models.CategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	category, svcErr := bc.catalog.UpdateCategory(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/:id (admin only).
func (bc *BookController) DeleteCategory(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := bc.catalog.DeleteCategory(ctx.Request.Context(), id); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.Status(http.StatusNoContent)
}
