package cloudinary

import "errors"

var ErrAPI = errors.New("cloudinary api error")
