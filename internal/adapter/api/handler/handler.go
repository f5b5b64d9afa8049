package handler

import (
	"tukarin/internal/usecase"
)

var (
	userHandler         *UserHandler
	itemHandler         *ItemHandler
	transactionHandler  *TransactionHandler
	chatHandler         *ChatHandler
	notificationHandler *NotificationHandler
	reviewHandler       *ReviewHandler
	creditHandler       *CreditHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	itemUseCase *usecase.ItemUseCase,
	transactionUseCase *usecase.TransactionUseCase,
	chatUseCase *usecase.ChatUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	creditUseCase *usecase.CreditUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	itemHandler = NewItemHandler(itemUseCase)
	transactionHandler = NewTransactionHandler(transactionUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	creditHandler = NewCreditHandler(creditUseCase)
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetTransactionHandler() *TransactionHandler {
	return transactionHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetCreditHandler() *CreditHandler {
	return creditHandler
}
