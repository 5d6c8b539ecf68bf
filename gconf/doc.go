/*
Package gconf provides a toolset for managing an extension configuration.

Every extension can declare a configuration singleton that is stored in the
database under a well known key. The configuration carries an owner address
and can only be modified by a patch message signed by that owner. This
package provides the generic handler processing such patch messages.
*/
package gconf
