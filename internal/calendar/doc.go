// Package calendar defines the generic calendar domain model shared by the
// host application and the provider adapters.
//
// The types here are deliberately provider-agnostic: adapters translate
// between this model and their provider's wire schema. The Provider
// interface is the contract every adapter implements; internal/office365
// is the Microsoft Graph implementation.
package calendar
