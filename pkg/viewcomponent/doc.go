// Package viewcomponent implements ordered, guarded action groups.
//
// A Group holds named Actions. Each action may require the subject to
// provide a capability tag, sit inside an ancestor providing a tag, or be
// granted a permission by the group's PermissionChecker. Rendering a group
// walks its current order, skips actions whose guards fail, calls the rest
// and aggregates their output as joined text, a list, or a name keyed map.
//
// Ordering: actions registered without a priority keep insertion order.
// Actions with a priority are placed ahead of every unprioritized action,
// ascending by priority, with equal priorities kept in arrival order.
// SetOrder replaces the order explicitly; unknown keys are dropped with a
// warning and omitted keys are appended.
//
// A Store is the table of groups an application builds at startup. It is
// populated through Register, frozen, and then read concurrently by render
// calls. Reordering a group while it is being rendered must be synchronized
// by the caller.
package viewcomponent
