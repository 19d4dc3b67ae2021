// Package handler is the HTTP layer between the router and the services.
//
// Form routes run through one pipeline (HandleForm): bind the submitted
// form, call the service action and translate its model.Result into a
// redirect, a re-rendered form state or an empty response.
package handler
