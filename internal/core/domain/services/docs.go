// Package services contains stateless domain services that coordinate logic
// across aggregates. The pricing calculator turns requested order lines plus
// their catalog records into priced lines and order-level totals, deciding
// whether an order can be auto-priced or must enter the quoting flow.
package services
