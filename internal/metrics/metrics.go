package metrics

const Namespace = "darkroom"
