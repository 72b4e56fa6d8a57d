package models

import "time"

// Index is the payload of an mq event.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}

// TicketOption is a purchasable ticket class attached to a gig.
type TicketOption struct {
	TicketID  string    `json:"ticketid" bson:"ticketid"`
	GigID     string    `json:"gigid" bson:"gigid"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	Currency  string    `json:"currency" bson:"currency"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Sold      int       `json:"sold" bson:"sold"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// PurchasedTicket is a bought ticket with its verification code.
type PurchasedTicket struct {
	GigID      string    `json:"gigid" bson:"gigid"`
	TicketID   string    `json:"ticketid" bson:"ticketid"`
	UserID     string    `json:"userid" bson:"userid"`
	BuyerName  string    `json:"buyer_name,omitempty" bson:"buyer_name,omitempty"`
	UniqueCode string    `json:"uniquecode" bson:"uniquecode"`
	BoughtAt   time.Time `json:"bought_at" bson:"bought_at"`
}
