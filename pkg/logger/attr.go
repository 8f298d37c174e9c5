package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// HouseholdID records the household identifier under the key "household_id".
// If id is nil, it returns an empty Attr.
func HouseholdID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("household_id", id)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// Provider records the billing provider label under the key "provider".
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// Plan records the subscription plan under the key "plan".
func Plan(plan any) slog.Attr {
	return slog.Any("plan", plan)
}

// ProductID records a store product identifier under the key "product_id".
func ProductID(id string) slog.Attr {
	return slog.String("product_id", id)
}

// FlowState records the purchase flow state under the key "flow_state".
func FlowState(state any) slog.Attr {
	return slog.Any("flow_state", state)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
