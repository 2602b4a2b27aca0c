package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SalesOrderStatus represents the status of a sales order
type SalesOrderStatus int

const (
	SalesOrderStatusPending    SalesOrderStatus = 0
	SalesOrderStatusProcessing SalesOrderStatus = 1
	SalesOrderStatusDelivered  SalesOrderStatus = 2
	SalesOrderStatusCancelled  SalesOrderStatus = 3
)

func (s SalesOrderStatus) String() string {
	names := [...]string{"Pending", "Processing", "Delivered", "Cancelled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

// RequiresLineItems reports whether an order must carry at least one line
// item before it may enter this status.
func (s SalesOrderStatus) RequiresLineItems() bool {
	return s == SalesOrderStatusProcessing || s == SalesOrderStatusDelivered
}

// ReservesStock reports whether line quantities are held as reservations
// while the order sits in this status.
func (s SalesOrderStatus) ReservesStock() bool {
	return s == SalesOrderStatusPending || s == SalesOrderStatusProcessing
}

// ConsumesStock reports whether line quantities have been taken out of the
// actual stock in this status.
func (s SalesOrderStatus) ConsumesStock() bool {
	return s == SalesOrderStatusDelivered
}

func (s SalesOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SalesOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SalesOrderStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = SalesOrderStatusPending
	case "Processing":
		*s = SalesOrderStatusProcessing
	case "Delivered":
		*s = SalesOrderStatusDelivered
	case "Cancelled":
		*s = SalesOrderStatusCancelled
	}
	return nil
}

func (s SalesOrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SalesOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SalesOrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SalesOrderStatus(v)
	case int:
		*s = SalesOrderStatus(v)
	}
	return nil
}
