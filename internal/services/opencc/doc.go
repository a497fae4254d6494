// Package opencc converts Chinese text between Simplified and Traditional
// scripts by shelling out to the opencc binary. The converter is optional:
// callers check Available and skip conversion when the tool is absent.
package opencc
