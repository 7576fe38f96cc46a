// Command subsync aligns SRT subtitle timing to video audio using speech
// recognition, for single files or whole directories.
package main
