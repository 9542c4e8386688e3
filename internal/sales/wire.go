package sales

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PurchaseRequest is the POST /purchase2 body. Only codes and quantities
// are sent; the server prices the items itself.
type PurchaseRequest struct {
	EmployeeCode string         `json:"emp_cd"`
	StoreCode    string         `json:"store_cd"`
	PosNo        string         `json:"pos_no"`
	Items        []PurchaseItem `json:"items"`
}

type PurchaseItem struct {
	Code     string `json:"code"`
	Quantity int    `json:"qty"`
}

// PurchaseResponse is the sales service's reconciliation.
type PurchaseResponse struct {
	TransactionID TransactionID `json:"trd_id"`
	TotalAmount   int64         `json:"total_amt"`
	TotalExTax    int64         `json:"ttl_amt_ex_tax"`
}

// TransactionID accepts trd_id as either a JSON string or a JSON number.
type TransactionID string

func (id *TransactionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TransactionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("trd_id: %w", err)
	}
	*id = TransactionID(n.String())
	return nil
}
