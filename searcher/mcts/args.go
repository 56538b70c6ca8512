package mcts

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Use rewards to estimate the chance of winning
const Win = 1.0
const Loss = 1 - Win

// MaxCutoff bounds random playouts; the position is evaluated once it is reached.
const MaxCutoff = 60

// evalScale converts an evaluation score into a win probability.
const evalScale = 400.0
