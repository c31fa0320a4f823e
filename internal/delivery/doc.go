// Package delivery routes rendered reports to their destination channels.
//
// Each channel (email, download, cloud) is implemented as a Strategy looked
// up through a Registry keyed by short channel tags. Strategies do not speak
// wire protocols themselves: each one depends on a narrow collaborator
// interface (EmailTransport, FileSystem, CloudClient) injected at
// construction time, so transports can be swapped without touching routing
// logic and tests can observe deliveries without real I/O.
//
// Delivery is strictly single-shot. A failed attempt surfaces as an error
// wrapping both ErrDelivery and the collaborator's error; retry policy, if
// any, belongs to callers.
package delivery
