// Package workshop locates the Wallpaper Engine workshop content directory:
// completing partially entered Steam paths and probing the places Steam
// libraries usually live.
package workshop
