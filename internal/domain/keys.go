package domain

// KeyPrefix is prepended to every storage key. The composition root overrides
// it from config before any repository is constructed.
var KeyPrefix = "cardex:"
