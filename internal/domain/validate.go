package domain

import "regexp"

var phonePattern = regexp.MustCompile(`^(\+7|8)\d{10}$`)

// Validate checks a create draft. Every violated rule is reported.
func (o Order) Validate() error {
	var msgs []Message
	msgs = append(msgs, validateMutable(o.ContactPhone, o.Status)...)
	if o.UserID <= 0 {
		msgs = append(msgs, Message{Key: MsgUserIDMin})
	}
	if len(o.Items) == 0 {
		msgs = append(msgs, Message{Key: MsgItemsRequired})
	}
	msgs = append(msgs, validateItems(o.Items)...)
	if len(msgs) > 0 {
		return Validation("validate order", msgs...)
	}
	return nil
}

func (p Patch) Validate() error {
	msgs := validateMutable(p.ContactPhone, p.Status)
	if p.Items != nil && len(p.Items) == 0 {
		msgs = append(msgs, Message{Key: MsgItemsRequired})
	}
	msgs = append(msgs, validateItems(p.Items)...)
	if len(msgs) > 0 {
		return Validation("validate patch", msgs...)
	}
	return nil
}

func validateMutable(phone string, status Status) []Message {
	var msgs []Message
	switch {
	case phone == "":
		msgs = append(msgs, Message{Key: MsgPhoneRequired})
	case !phonePattern.MatchString(phone):
		msgs = append(msgs, Message{Key: MsgPhonePattern})
	}
	switch {
	case status == "":
		msgs = append(msgs, Message{Key: MsgStatusRequired})
	case !status.Valid():
		msgs = append(msgs, Message{Key: MsgStatusUnknown, Args: []any{string(status)}})
	}
	return msgs
}

// validateItems reports each rule at most once, however many items break it.
func validateItems(items []Item) []Message {
	var badProduct, badQty bool
	for _, it := range items {
		if it.ProductID < 1 {
			badProduct = true
		}
		if it.Quantity < 1 {
			badQty = true
		}
	}
	var msgs []Message
	if badProduct {
		msgs = append(msgs, Message{Key: MsgProductIDMin})
	}
	if badQty {
		msgs = append(msgs, Message{Key: MsgQuantityMin})
	}
	return msgs
}
