// Package location models storage locations and their bounded LIFO bin stacks.
package location
