// Package order contains the order aggregate: the root entity, its priced
// lines, the customer contact value object, and the status state machine
// governing the lifecycle from placement through quoting, production, and
// delivery.
//
// An order is created in one of two initial states depending on its contents:
// orders made entirely of catalog-priceable items start in Pending, while
// orders containing custom-priced items start in QuoteNeeded and carry no
// definitive total until staff issue a quote. All further movement goes
// through the transition table defined on Status; illegal moves are conflicts
// that leave the aggregate untouched.
package order
