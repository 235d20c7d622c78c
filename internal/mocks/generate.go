package mocks

//go:generate mockery --name RawDataAccessor --srcpkg github.com/aevon-lab/tally/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name SnapshotArchive --srcpkg github.com/aevon-lab/tally/internal/refresh --output ./refresh --outpkg refreshmocks --with-expecter
//go:generate mockery --name Notifier --srcpkg github.com/aevon-lab/tally/internal/refresh --output ./refresh --outpkg refreshmocks --with-expecter
