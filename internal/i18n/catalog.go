package i18n

import "github.com/TemirB/order-pipeline/internal/domain"

type text struct {
	en string
	ru string
}

var texts = map[string]text{
	domain.MsgOrderNotFound:      {"Order with id %s not found", "Заказ с id %s не найден"},
	domain.MsgUserNotFound:       {"User with id %s not found", "Пользователь с id %s не найден"},
	domain.MsgProductNotFound:    {"Product with id %s not found", "Товар с id %s не найден"},
	domain.MsgServiceUnavailable: {"Service is temporarily unavailable, try again later", "Сервис временно недоступен, попробуйте позже"},
	domain.MsgServiceError:       {"A dependent service returned an error", "Зависимый сервис вернул ошибку"},
	domain.MsgInternal:           {"Internal server error", "Внутренняя ошибка сервера"},
	domain.MsgBadRequest:         {"Malformed request", "Некорректный запрос"},
	domain.MsgUnsupportedMedia:   {"Content type must be application/json", "Тип содержимого должен быть application/json"},

	domain.MsgOrderCreated: {"Order created", "Заказ создан"},
	domain.MsgOrderUpdated: {"Order updated", "Заказ обновлён"},
	domain.MsgOrderDeleted: {"Order deleted", "Заказ удалён"},

	domain.MsgPhoneRequired:  {"Contact phone is required", "Контактный телефон обязателен"},
	domain.MsgPhonePattern:   {"Contact phone must look like +7XXXXXXXXXX or 8XXXXXXXXXX", "Контактный телефон должен иметь вид +7XXXXXXXXXX или 8XXXXXXXXXX"},
	domain.MsgStatusRequired: {"Order status is required", "Статус заказа обязателен"},
	domain.MsgStatusUnknown:  {"Unknown order status %q", "Неизвестный статус заказа %q"},
	domain.MsgUserIDMin:      {"User id must be positive", "Id пользователя должен быть положительным"},
	domain.MsgItemsRequired:  {"Order must contain at least one item", "Заказ должен содержать хотя бы одну позицию"},
	domain.MsgProductIDMin:   {"Product id must be at least 1", "Id товара должен быть не меньше 1"},
	domain.MsgQuantityMin:    {"Quantity must be at least 1", "Количество должно быть не меньше 1"},
}
