/*
Package errors implements custom error interfaces for the application.

The idea is to reuse as many errors from this package as possible and only
introduce a new error class when absolutely needed. Errors are created from
registered roots with a unique code each, and extended with a context
description using Wrap and Wrapf. Error class membership is tested with the
Is method of the root error, never by string comparison.
*/
package errors
