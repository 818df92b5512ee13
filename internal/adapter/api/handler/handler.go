package handler

import (
	"nexusmarket/internal/usecase"
)

var (
	authHandler     *AuthHandler
	userHandler     *UserHandler
	catalogHandler  *CatalogHandler
	categoryHandler *CategoryHandler
	listingHandler  *ListingHandler
	browseHandler   *BrowseHandler
	orderHandler    *OrderHandler
	reviewHandler   *ReviewHandler
	contentHandler  *ContentHandler
	couponHandler   *CouponHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	listingUseCase *usecase.ListingUseCase,
	browseUseCase *usecase.BrowseUseCase,
	orderUseCase *usecase.OrderUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	contentUseCase *usecase.ContentUseCase,
	couponUseCase *usecase.CouponUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	catalogHandler = NewCatalogHandler(catalogUseCase)
	categoryHandler = NewCategoryHandler(catalogUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	browseHandler = NewBrowseHandler(browseUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	contentHandler = NewContentHandler(contentUseCase)
	couponHandler = NewCouponHandler(couponUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetCategoryHandler() *CategoryHandler {
	return categoryHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetBrowseHandler() *BrowseHandler {
	return browseHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetContentHandler() *ContentHandler {
	return contentHandler
}

func GetCouponHandler() *CouponHandler {
	return couponHandler
}
