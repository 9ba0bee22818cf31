package model

// Transaction 支付流水
type Transaction struct {
	ID           string            `json:"id"`
	OrderID      string            `json:"orderId,omitempty"`
	Amount       float64           `json:"amount"`
	Status       TransactionStatus `json:"status"`
	RefundStatus string            `json:"refundStatus,omitempty"`
	Mode         string            `json:"mode,omitempty"`
	Date         string            `json:"date,omitempty"`
	OwnerKey     string            `json:"ownerKey,omitempty"`
	BuyerName    string            `json:"buyerName,omitempty"`
	Email        string            `json:"email,omitempty"`
	Payout       string            `json:"payout,omitempty"` // 结算单号，空表示未结算
}

// AwaitingPayout 待结算：状态为 pending 或尚无结算记录
func (t *Transaction) AwaitingPayout() bool {
	return t.Status == TransactionPending || t.Payout == ""
}

// Refunded 退款标记或状态任一为 refunded
func (t *Transaction) Refunded() bool {
	return t.RefundStatus == string(TransactionRefunded) || t.Status == TransactionRefunded
}

// DatePrefix 日期前缀
func (t *Transaction) DatePrefix(n int) string {
	return prefix(t.Date, n)
}
