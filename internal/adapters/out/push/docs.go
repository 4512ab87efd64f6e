// Package push delivers ready notifications to the customer side. HTTPNotifier
// posts to the storefront push endpoint, AMQPNotifier publishes to a broker
// exchange and NopNotifier discards everything for terminals without either.
package push
