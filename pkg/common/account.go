package common

import (
	"time"

	"tickforge/pkg/utility"
	"tickforge/pkg/utility/fixed"
)

type Balance struct {
	Source      string              `json:"src,omitempty"`
	Account     string              `json:"account,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts,omitempty"`
	Value       fixed.Point         `json:"value"`
}

type Equity struct {
	Source      string              `json:"src,omitempty"`
	Account     string              `json:"account,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts,omitempty"`
	Value       fixed.Point         `json:"value"`
}

// AccountInfo is a read-only snapshot handed to strategy code.
type AccountInfo struct {
	Currency   string      `json:"currency"`
	Balance    fixed.Point `json:"balance"`
	Equity     fixed.Point `json:"equity"`
	UsedMargin fixed.Point `json:"used_margin"`
}
