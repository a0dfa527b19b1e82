package main

import (
	cartv1 "github.com/dwikikusuma/shop-backoffice/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/shop-backoffice/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/shop-backoffice/api/checkout/v1"
	orderv1 "github.com/dwikikusuma/shop-backoffice/api/order/v1"
	userv1 "github.com/dwikikusuma/shop-backoffice/api/user/v1"
	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
)

var (
	customer = auth.Roles(auth.RoleCustomer)
	seller   = auth.Roles(auth.RoleCollaborator, auth.RoleAdmin)
	admin    = auth.Roles(auth.RoleAdmin)
)

func policy() auth.Policy {
	p := auth.Policy{}
	add := func(service string, rules map[string]auth.Rule) {
		for method, rule := range rules {
			p[rpc.FullMethod(service, method)] = rule
		}
	}

	add(userv1.ServiceName, map[string]auth.Rule{
		"Register":           auth.Public(),
		"Login":              auth.Public(),
		"Me":                 auth.Authenticated(),
		"CreateCollaborator": admin,
		"UpdateUser":         admin,
		"SetActive":          admin,
		"DeleteUser":         admin,
		"GetUser":            admin,
		"ListUsers":          admin,
	})
	add(catalogv1.ServiceName, map[string]auth.Rule{
		"ListProducts":         auth.Public(),
		"SearchProducts":       auth.Public(),
		"GetProduct":           auth.Public(),
		"CreateProduct":        seller,
		"UpdateProduct":        seller,
		"DiscontinueProduct":   seller,
		"ListMyProducts":       seller,
		"ListInactiveProducts": seller,
	})
	add(cartv1.ServiceName, map[string]auth.Rule{
		"GetCart":         customer,
		"CreateCart":      customer,
		"AddItem":         customer,
		"SetItemQuantity": customer,
		"RemoveItem":      customer,
		"ClearCart":       customer,
		"DeleteCart":      customer,
		"ListCarts":       admin,
	})
	add(checkoutv1.ServiceName, map[string]auth.Rule{
		"Quote":             customer,
		"Checkout":          customer,
		"CancelOrder":       customer,
		"UpdateOrderStatus": admin,
	})
	add(orderv1.ServiceName, map[string]auth.Rule{
		"GetOrder":     customer,
		"ListMyOrders": customer,
		"ListOrders":   admin,
		"ListSales":    seller,
		"GetSale":      seller,
	})

	return p
}
