package domain

// Catalog keys. Translations live in internal/i18n.
const (
	MsgOrderNotFound      = "error.order.not_found"
	MsgUserNotFound       = "error.user.not_found"
	MsgProductNotFound    = "error.product.not_found"
	MsgServiceUnavailable = "error.service.unavailable"
	MsgServiceError       = "error.service.error"
	MsgInternal           = "error.internal"
	MsgBadRequest         = "error.request.bad"
	MsgUnsupportedMedia   = "error.request.media_type"

	MsgOrderCreated = "info.order.create"
	MsgOrderUpdated = "info.order.update"
	MsgOrderDeleted = "info.order.delete"

	MsgPhoneRequired  = "validate.order.contact_phone.not_null"
	MsgPhonePattern   = "validate.order.contact_phone.pattern"
	MsgStatusRequired = "validate.order.order_status.not_null"
	MsgStatusUnknown  = "validate.order.order_status.unknown"
	MsgUserIDMin      = "validate.order.user_id.min"
	MsgItemsRequired  = "validate.order.order_items.not_empty"
	MsgProductIDMin   = "validate.order.product_id.min"
	MsgQuantityMin    = "validate.order.quantity.min"
)
