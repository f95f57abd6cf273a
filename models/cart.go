package models

// CartItemVersion tags cart metadata written in the per-material format
const CartItemVersion = "v2"

// CartMaterialEntry is the frozen customization of one material inside cart metadata
type CartMaterialEntry struct {
	Type  MaterialValueType `json:"type"`
	Value string            `json:"value"`
	Hex   string            `json:"hex"`
}

// CartLineMetadata is attached to the cart line item at add-to-cart time
// Example:
//
//	{
//	  "materials": {"Bodice": {"type": "skinTone", "value": "custom", "hex": "#D4A67C"}},
//	  "virtual_skin_tone": "custom",
//	  "virtual_skin_tone_hex": "#D4A67C",
//	  "_cart_item_version": "v2"
//	}
type CartLineMetadata struct {
	Materials          map[string]CartMaterialEntry `json:"materials,omitempty"`
	VirtualSkinTone    string                       `json:"virtual_skin_tone,omitempty"`
	VirtualSkinToneHex string                       `json:"virtual_skin_tone_hex,omitempty"`
	Version            string                       `json:"_cart_item_version"`
}

// AddToCartRequest represents the request body for POST /api/products/:id/cart-lines
// Example: {"cartId": "cart_01", "variantId": "variant_01", "quantity": 1, "customerId": "cus_01", "skinTone": "fitzpatrick-3b"}
// customerHint carries customer metadata already known to the client (custom_skin_color)
type AddToCartRequest struct {
	CartID       string            `json:"cartId"`
	VariantID    string            `json:"variantId"`
	Quantity     int               `json:"quantity"`
	CustomerID   string            `json:"customerId,omitempty"`
	SkinTone     string            `json:"skinTone,omitempty"`
	CustomerHint *CustomerMetadata `json:"customerHint,omitempty"`
}

// CartLine represents a line item stored through the commerce backend
type CartLine struct {
	ID        int64            `json:"id"`
	CartID    string           `json:"cartId"`
	ProductID string           `json:"productId"`
	VariantID string           `json:"variantId"`
	Quantity  int              `json:"quantity"`
	Metadata  CartLineMetadata `json:"metadata"`
	CreatedAt string           `json:"createdAt"`
}
