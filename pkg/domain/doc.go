/*
Package domain contains the core data model of the Easel editor.

It defines the shape of an editable deck without any I/O or persistence concerns,
following the Hexagonal Architecture used throughout the module.

# Key Entities

  - Collection: the ordered list of Slides (untyped tree, see package tree).
  - Slide: an ordered list of Elements rendered together.
  - Element: a tagged node {type, props} carrying position, score and answer fields.
  - Path: an ordered key sequence (string or int) addressing a location in a Collection.
  - Snapshot: the persisted unit of a Collection for one editing session.
  - Change: the notification emitted after every accepted mutation.
*/
package domain
