package repository

import (
	"strings"

	"github.com/tidwall/gjson"

	"handloom_market/internal/model"
)

// ==================== 读取归一化 ====================
// 历史数据字段名不统一，这里在存储边界一次性折叠为规范字段

// 商品归属字段的查找顺序
var ownerFields = []string{"ownerKey", "artisan", "seller", "owner", "artisanId", "userId"}

// parseArray 校验并返回数组元素，非法 JSON 或非数组返回 false
func parseArray(raw []byte) ([]gjson.Result, bool) {
	if !gjson.ValidBytes(raw) {
		return nil, false
	}
	res := gjson.ParseBytes(raw)
	if !res.IsArray() {
		return nil, false
	}
	return res.Array(), true
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

// str 依次取第一个非空字段的字符串值
func str(obj gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := obj.Get(k); present(v) {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

// num 依次取第一个非零数值，字符串数字同样可用
func num(obj gjson.Result, keys ...string) float64 {
	for _, k := range keys {
		if v := obj.Get(k); present(v) {
			if f := v.Float(); f != 0 {
				return f
			}
		}
	}
	return 0
}

func integer(obj gjson.Result, keys ...string) int {
	return int(num(obj, keys...))
}

// flag 布尔字段，兼容 "true"/"approved"/"yes" 之类的字符串
func flag(obj gjson.Result, keys ...string) bool {
	for _, k := range keys {
		v := obj.Get(k)
		if !present(v) {
			continue
		}
		if v.Type == gjson.String {
			switch strings.ToLower(strings.TrimSpace(v.Str)) {
			case "true", "yes", "approved", "1":
				return true
			}
			return false
		}
		return v.Bool()
	}
	return false
}

// ownerOf 归属键，值为对象时取 email / name / id
func ownerOf(obj gjson.Result, keys ...string) string {
	for _, k := range keys {
		v := obj.Get(k)
		if !present(v) {
			continue
		}
		if v.IsObject() {
			if s := str(v, "email", "name", "id"); s != "" {
				return s
			}
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	return ""
}

// ==================== 各集合解码 ====================

func decodeProduct(v gjson.Result) model.Product {
	p := model.Product{
		ID:          str(v, "id", "productId"),
		Name:        str(v, "name", "title"),
		Category:    str(v, "category"),
		Description: str(v, "description"),
		Price:       num(v, "price", "amount"),
		Cost:        num(v, "cost", "costPrice"),
		Stock:       integer(v, "stock", "quantity"),
		Status:      strings.ToLower(str(v, "status")),
		Approved:    flag(v, "approved", "approval"),
		OwnerKey:    ownerOf(v, ownerFields...),
		Sales:       integer(v, "sales", "sold"),
		Image:       str(v, "image", "img", "imageUrl"),
		CreatedAt:   str(v, "createdAt"),
		UpdatedAt:   str(v, "updatedAt"),
	}
	if p.Status == "" {
		p.Status = model.ProductActive
		if p.Stock <= 0 {
			p.Status = model.ProductOutOfStock
		}
	}
	return p
}

func decodeOrderItem(v gjson.Result) model.OrderItem {
	item := model.OrderItem{
		ProductID:  str(v, "productId", "product.id", "id"),
		Name:       str(v, "name", "product.name"),
		Qty:        integer(v, "qty", "quantity"),
		Price:      num(v, "price", "unitPrice", "product.price"),
		OwnerKey:   ownerOf(v, "ownerKey", "artisan", "seller", "owner", "artisanId"),
		CampaignID: str(v, "campaignId"),
	}
	if item.OwnerKey == "" {
		if nested := v.Get("product"); nested.IsObject() {
			item.OwnerKey = ownerOf(nested, ownerFields...)
		}
	}
	if item.Qty <= 0 {
		item.Qty = 1
	}
	if item.Price == 0 {
		if total := num(v, "total", "lineTotal"); total != 0 {
			item.Price = total / float64(item.Qty)
		}
	}
	if r := v.Get("review"); r.IsObject() {
		item.Review = &model.Review{
			Rating:  integer(r, "rating", "stars"),
			Comment: str(r, "comment", "text"),
			Date:    str(r, "date"),
		}
	}
	return item
}

func decodeOrder(v gjson.Result) model.Order {
	o := model.Order{
		ID:         str(v, "id", "orderId"),
		Status:     model.ParseOrderStatus(str(v, "status")),
		BuyerName:  str(v, "buyerName", "buyer", "customerName", "customer"),
		Email:      str(v, "email", "buyerEmail", "customerEmail"),
		Date:       str(v, "date", "createdAt", "orderDate"),
		Address:    str(v, "address", "deliveryAddress", "shippingAddress"),
		CampaignID: str(v, "campaignId"),
		Coupon:     str(v, "coupon", "couponCode"),
	}
	for _, it := range v.Get("items").Array() {
		o.Items = append(o.Items, decodeOrderItem(it))
	}
	o.Total = num(v, "total", "amount", "grandTotal")
	if o.Total == 0 {
		o.Total = o.ItemsTotal()
	}
	return o
}

func decodeTransaction(v gjson.Result) model.Transaction {
	t := model.Transaction{
		ID:           str(v, "id", "transactionId"),
		OrderID:      str(v, "orderId"),
		Amount:       num(v, "amount", "total"),
		Status:       model.ParseTransactionStatus(str(v, "status")),
		RefundStatus: str(v, "refundStatus"),
		Mode:         str(v, "mode", "paymentMode", "method"),
		Date:         str(v, "date", "transactionDate", "createdAt"),
		OwnerKey:     ownerOf(v, "ownerKey", "seller", "artisan", "vendor"),
		BuyerName:    str(v, "buyerName", "buyer"),
		Email:        str(v, "email"),
	}
	if p := v.Get("payout"); present(p) && p.Type != gjson.False {
		t.Payout = strings.TrimSpace(p.String())
	}
	return t
}

func decodeAccount(v gjson.Result) model.Account {
	a := model.Account{
		ID:               str(v, "id"),
		Email:            str(v, "email"),
		Password:         v.Get("password").String(),
		Role:             strings.ToLower(str(v, "role")),
		Status:           strings.ToLower(str(v, "status")),
		Name:             str(v, "name", "fullName"),
		Phone:            str(v, "phone"),
		ShopName:         str(v, "shopName"),
		RegistrationDate: str(v, "registrationDate", "createdAt"),
		TotalProducts:    integer(v, "totalProducts"),
		TotalSales:       num(v, "totalSales"),
	}
	if s := str(v, "lastLogin"); s != "" {
		a.LastLogin = &s
	}
	return a
}

func decodeCampaign(v gjson.Result) model.Campaign {
	c := model.Campaign{
		ID:           str(v, "id"),
		Title:        str(v, "title", "name"),
		Start:        str(v, "start", "startDate"),
		End:          str(v, "end", "endDate"),
		Discount:     num(v, "discount"),
		Coupon:       str(v, "coupon", "couponCode"),
		ManualStatus: strings.ToLower(str(v, "manualStatus")),
		Views:        integer(v, "views"),
		Clicks:       integer(v, "clicks"),
		CreatedAt:    str(v, "createdAt"),
	}
	for _, f := range v.Get("featured").Array() {
		if s := strings.TrimSpace(f.String()); s != "" {
			c.Featured = append(c.Featured, s)
		}
	}
	return c
}

func decodeTicket(v gjson.Result) model.SupportTicket {
	t := model.SupportTicket{
		ID:        str(v, "id"),
		Subject:   str(v, "subject", "title"),
		Message:   str(v, "message", "description"),
		Email:     str(v, "email"),
		Status:    strings.ToLower(str(v, "status")),
		CreatedAt: str(v, "createdAt", "date"),
	}
	if t.Status == "" {
		t.Status = model.TicketOpen
	}
	return t
}

func decodeNotification(v gjson.Result) model.Notification {
	return model.Notification{
		ID:        str(v, "id"),
		Kind:      str(v, "kind", "type"),
		Message:   str(v, "message"),
		Audience:  str(v, "audience"),
		RefID:     str(v, "refId"),
		Read:      flag(v, "read"),
		CreatedAt: str(v, "createdAt"),
	}
}

func decodeFeedback(v gjson.Result) model.Feedback {
	return model.Feedback{
		ID:        str(v, "id"),
		Name:      str(v, "name"),
		Message:   str(v, "message", "feedback", "comment"),
		CreatedAt: str(v, "createdAt"),
	}
}

func decodeCartEntry(id string, v gjson.Result) model.CartEntry {
	e := model.CartEntry{
		ID:       str(v, "id"),
		Name:     str(v, "name"),
		Price:    num(v, "price"),
		Image:    str(v, "image"),
		Category: str(v, "category"),
		OwnerKey: ownerOf(v, ownerFields...),
		Qty:      integer(v, "qty", "quantity"),
	}
	if e.ID == "" {
		e.ID = id
	}
	if e.Qty <= 0 {
		e.Qty = 1
	}
	return e
}

// decodeCart 购物车为以商品 ID 为键的对象，旧数据可能是数组
func decodeCart(raw []byte) (model.Cart, bool) {
	if !gjson.ValidBytes(raw) {
		return nil, false
	}
	res := gjson.ParseBytes(raw)
	cart := model.Cart{}
	switch {
	case res.IsObject():
		res.ForEach(func(k, v gjson.Result) bool {
			if v.IsObject() {
				e := decodeCartEntry(k.String(), v)
				cart[e.ID] = e
			}
			return true
		})
	case res.IsArray():
		for _, v := range res.Array() {
			if e := decodeCartEntry("", v); e.ID != "" {
				cart[e.ID] = e
			}
		}
	default:
		return nil, false
	}
	return cart, true
}

// decodeSession 缺少 email 的会话视为未登录
func decodeSession(raw []byte) (*model.SessionUser, bool) {
	if !gjson.ValidBytes(raw) {
		return nil, false
	}
	res := gjson.ParseBytes(raw)
	if !res.IsObject() {
		return nil, false
	}
	u := &model.SessionUser{
		Email: str(res, "email"),
		Role:  strings.ToLower(str(res, "role")),
		Name:  str(res, "name"),
	}
	if u.Email == "" {
		return nil, false
	}
	return u, true
}
